package recipe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultRecipeIsValid(t *testing.T) {
	result, err := Validate(DefaultBytes())
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("embedded recipe is invalid: %+v", result.Issues)
	}
}

func TestDefault(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	if r.Defaults.WebPort != 5000 {
		t.Errorf("WebPort = %d, want 5000", r.Defaults.WebPort)
	}
	if r.Defaults.WebPortString() != "5000" {
		t.Errorf("WebPortString() = %q, want %q", r.Defaults.WebPortString(), "5000")
	}
	if r.Defaults.Platform != "heroku" {
		t.Errorf("Platform = %q, want heroku", r.Defaults.Platform)
	}
	if r.Defaults.UserModel != "User" {
		t.Errorf("UserModel = %q, want User", r.Defaults.UserModel)
	}

	names := make([]string, 0, len(r.Gems))
	for _, g := range r.Gems {
		names = append(names, g.Name)
	}
	for _, want := range []string{"puma", "sidekiq", "pg", "devise", "cancan", "dalli"} {
		if !contains(names, want) {
			t.Errorf("default gems missing %q: %v", want, names)
		}
	}

	if len(r.Groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(r.Groups))
	}
	if strings.Join(r.Groups[0].Envs, ",") != "development,test" {
		t.Errorf("first group envs = %v", r.Groups[0].Envs)
	}

	heroku := r.GemsForPlatform("heroku")
	if len(heroku) != 1 || heroku[0].Name != "memcachier" {
		t.Errorf("GemsForPlatform(heroku) = %+v", heroku)
	}
	if got := r.GemsForPlatform("fly"); len(got) != 0 {
		t.Errorf("GemsForPlatform(fly) = %+v, want none", got)
	}

	if !contains(r.Gitignore, "config/database.yml") {
		t.Errorf("gitignore entries missing config/database.yml: %v", r.Gitignore)
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	r, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if r.Name != "rails-heroku-starter" {
		t.Errorf("Name = %q", r.Name)
	}
}

func TestLoadCustomRecipe(t *testing.T) {
	path := writeRecipe(t, `name: minimal
version: "0.1.0"
defaults:
  web_port: 3000
  platform: fly
  user_model: Account
gems:
  - name: puma
`)

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if r.Defaults.WebPort != 3000 || r.Defaults.UserModel != "Account" {
		t.Errorf("unexpected defaults: %+v", r.Defaults)
	}
	if len(r.Gitignore) != 0 {
		t.Errorf("Gitignore = %v, want empty", r.Gitignore)
	}
}

func TestLoadInvalidRecipe(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantSub string
	}{
		{
			name: "missing defaults",
			yaml: `name: broken
version: "1"
gems: []
`,
			wantSub: "defaults",
		},
		{
			name: "port out of range",
			yaml: `name: broken
version: "1"
defaults:
  web_port: 70000
  platform: heroku
  user_model: User
gems: []
`,
			wantSub: "/defaults/web_port",
		},
		{
			name: "unknown gem field",
			yaml: `name: broken
version: "1"
defaults:
  web_port: 5000
  platform: heroku
  user_model: User
gems:
  - name: puma
    source: rubygems
`,
			wantSub: "/gems/0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRecipe(t, tt.yaml)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestValidateMalformedYAML(t *testing.T) {
	if _, err := Validate([]byte("name: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	r, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	out, err := Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	result, err := Validate(out)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Valid {
		t.Errorf("marshaled recipe is invalid: %+v", result.Issues)
	}
}

func writeRecipe(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
