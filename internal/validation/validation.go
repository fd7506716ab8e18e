// Package validation binds request payloads and checks them against their
// validator struct tags, turning failures into field-level 400 errors.
package validation
