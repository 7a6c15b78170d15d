// Package role ships the built-in behavior units and the plugin registry
// used for runtime loading. Each unit is an ordinary core.Unit built with
// the unit builder; nothing here is special-cased by the engines, including
// the addressed-policy unit that itself redispatches.
package role
