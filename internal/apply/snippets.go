package apply

// Text injected into files produced by `rails new` and the generators.
const (
	productionCacheStorePattern = `# config\.cache_store = :mem_cache_store`
	productionCacheStore        = "config.cache_store = :dalli_store"

	environmentConfig = `# Config options from start template
config.cache_store = :null_store
config.action_mailer.default_url_options = { host: "localhost:3000" }
`

	generatorsConfig = `config.generators do |g|
  g.test_framework :mini_test, spec: true
end
`

	controllerAnchor = "protect_from_forgery with: :exception"
	controllerPatch  = `

  before_action :configure_permitted_parameters, if: :devise_controller?

  protected

  def configure_permitted_parameters
    devise_parameter_sanitizer.permit(:sign_in, keys: [:username, :email])
  end`

	commitMessage = "Initial commit"
	originRemote  = "origin"
)

// Lines the devise model generator used to emit for protected attributes.
var deviseModelLines = []string{
	"# Setup accessible (or protected) attributes for your model",
	"attr_accessible :email, :password, :password_confirmation, :remember_me",
}

// Project-relative paths touched by the run.
const (
	pathProduction        = "config/environments/production.rb"
	pathSessionStore      = "config/initializers/session_store.rb"
	pathController        = "app/controllers/application_controller.rb"
	pathStylesheet        = "app/assets/stylesheets/application.css"
	pathStylesheetSCSS    = "app/assets/stylesheets/application.css.scss"
	pathJavaScript        = "app/assets/javascripts/application.js"
	requireTreeExpression = `require_tree`
)
