// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors for the capreg CLI.
//
// ActionableError carries the failed operation, the resource involved, hints
// for fixing it and the cause. The guide catalog (issue.go) holds longer
// Markdown explanations for recurring problems, rendered with glamour.
package issue
