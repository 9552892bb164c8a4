// Package i18n provides the localized, user-facing text for sign-in results.
//
// Catalogs are YAML files named {lang}.yaml. Nested keys are flattened with
// dots, so the English message for a cancelled prompt lives at
// "signin.error.user_cancelled". English, Spanish and French are embedded;
// Load accepts any other fs.FS with the same layout.
//
// Language selection uses golang.org/x/text/language matching, so "es-MX",
// "fr-CA" or a full Accept-Language header resolve to the closest catalog.
// Unknown languages and missing keys fall back to the default language.
//
// # Usage
//
//	msgs := i18n.Default()
//	text := msgs.Result("es-MX", res)
package i18n
