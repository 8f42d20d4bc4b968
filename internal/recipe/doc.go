// Package recipe defines what railstart applies to a Rails application: the
// gems and gem groups to declare, platform-specific gems, the defaults used
// for blank prompt answers, the ignore-list entries and the Rails version the
// recipe targets. A default recipe is embedded in the binary; operators can
// supply their own YAML file, which is validated against an embedded JSON
// Schema before use.
package recipe
