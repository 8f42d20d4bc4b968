// Package scaffold renders the fixed configuration files railstart drops into
// a Rails application (Procfile, Puma config, staging environment, database
// templates, initializers, .env) from templates embedded in the binary.
package scaffold
