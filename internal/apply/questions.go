package apply

import (
	"fmt"

	"github.com/railstart-labs/railstart/internal/prompt"
)

// Question keys, usable in answers files.
const (
	KeyEnvFile     = "env_file"
	KeyPort        = "port"
	KeyDeviseModel = "devise_model"
	KeyModelName   = "model_name"
	KeyPlatform    = "platform"
	KeyMigrate     = "migrate"
	KeyGitHub      = "github"
	KeyGitHubUser  = "github_user"
)

var (
	questionEnvFile = prompt.Question{
		Key:     KeyEnvFile,
		Text:    "Would you like to generate a .env file for local development?",
		Default: true,
	}
	questionDeviseModel = prompt.Question{
		Key:     KeyDeviseModel,
		Text:    "Generate a default devise setup?",
		Default: true,
	}
	questionMigrate = prompt.Question{
		Key:  KeyMigrate,
		Text: "Run migrations?",
	}
	questionGitHub = prompt.Question{
		Key:  KeyGitHub,
		Text: "Initialize GitHub repository?",
	}
	questionGitHubUser = prompt.Question{
		Key:  KeyGitHubUser,
		Text: "What is your GitHub username?",
	}
)

func questionPort(def string) prompt.Question {
	return prompt.Question{
		Key:  KeyPort,
		Text: fmt.Sprintf("What port would you like the web server to run on? (defaults to %s)", def),
	}
}

func questionModelName(def string) prompt.Question {
	return prompt.Question{
		Key:  KeyModelName,
		Text: fmt.Sprintf("Name for the devise model? (default is %s)", def),
	}
}

func questionPlatform(def string) prompt.Question {
	return prompt.Question{
		Key:  KeyPlatform,
		Text: fmt.Sprintf("What hosting platform are you targetting? (default is %s)", def),
	}
}

// QuestionKeys lists every key in the order the questions are asked.
func QuestionKeys() []string {
	return []string{
		KeyEnvFile, KeyPort, KeyDeviseModel, KeyModelName,
		KeyPlatform, KeyMigrate, KeyGitHub, KeyGitHubUser,
	}
}
