// Package javaadapter implements lang.Adapter for Java.
//
// Import extraction is regexp-based, since Java imports are strictly
// line-oriented (one fully-qualified name per `import` statement, always
// at file scope) — spec.md calls this out explicitly as sufficient,
// unlike Go/TS/Python where nested or aliased forms need more care.
package javaadapter
