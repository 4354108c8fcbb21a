// Package docgen turns a completed form into the plain-text legal document.
// Generation is pure and deterministic apart from the embedded date stamp;
// rendering to PDF/Word is the export service's concern, not ours.
package docgen

import (
	"fmt"
	"strings"
	"time"

	"estatedocs/internal/domain"
	"estatedocs/internal/domain/models"
)

// Placeholder tokens for fields the user has not filled in yet. Every
// interpolated field falls back to its bracketed token rather than dropping
// the sentence: the tokens tell the user exactly what remains incomplete.
const (
	PlaceholderName        = "[NAME]"
	PlaceholderAddress     = "[ADDRESS]"
	PlaceholderCity        = "[CITY]"
	PlaceholderPostalCode  = "[POSTAL CODE]"
	PlaceholderDateOfBirth = "[DATE OF BIRTH]"
	PlaceholderWitnessName = "[WITNESS NAME]"
)

// Generate produces the document text for a form and document type. An
// unrecognized type is a programmer error: the session constructor guards
// against it, so reaching here with one fails loudly.
func Generate(form models.FormData, docType models.DocumentType, now time.Time) (string, error) {
	switch docType {
	case models.DocumentTypeWill:
		return generateWill(form, now), nil
	case models.DocumentTypePOAProperty:
		return generatePOAProperty(form, now), nil
	case models.DocumentTypePOACare:
		return generatePOACare(form, now), nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownType, docType)
	}
}

// fieldOr returns the field value or its bracketed placeholder when unset.
func fieldOr(form models.FormData, name, placeholder string) string {
	if v := strings.TrimSpace(form.Field(name)); v != "" {
		return v
	}
	return placeholder
}

// writeHeading writes the document title and generation date stamp.
func writeHeading(b *strings.Builder, title string, now time.Time) {
	b.WriteString(strings.ToUpper(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(title)))
	b.WriteString("\n\n")
	fmt.Fprintf(b, "Prepared on %s under the laws of the Province of Ontario.\n\n", now.Format("January 2, 2006"))
}

// writeDeclarant writes the standard opening declaration for the person
// making the document.
func writeDeclarant(b *strings.Builder, form models.FormData, role string) {
	fmt.Fprintf(b, "I, %s, of %s, %s, Ontario, %s (the %q), born %s, declare the following:\n\n",
		fieldOr(form, "fullName", PlaceholderName),
		fieldOr(form, "address", PlaceholderAddress),
		fieldOr(form, "city", PlaceholderCity),
		fieldOr(form, "postalCode", PlaceholderPostalCode),
		role,
		fieldOr(form, "dateOfBirth", PlaceholderDateOfBirth),
	)
}

// writePersonList renders a numbered list of person entries, or an explicit
// "No <role> specified." line for an empty list - never an empty section.
func writePersonList(b *strings.Builder, form models.FormData, listField, role string) {
	persons := form.Persons(listField)
	if len(persons) == 0 {
		fmt.Fprintf(b, "No %s specified.\n", role)
		return
	}

	for i, p := range persons {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = PlaceholderName
		}
		fmt.Fprintf(b, "  %d. %s", i+1, name)
		if p.Relationship != "" {
			fmt.Fprintf(b, " (%s)", p.Relationship)
		}
		if p.Address != "" {
			fmt.Fprintf(b, ", of %s", p.Address)
			if p.City != "" {
				fmt.Fprintf(b, ", %s", p.City)
			}
		}
		b.WriteString("\n")
	}
}

// writeSignatureBlock writes the signing lines for the declarant followed by
// the witness attestation blocks. Ontario execution requires two witnesses;
// missing names render as placeholders so the gap is visible.
func writeSignatureBlock(b *strings.Builder, form models.FormData, roleLabel string) {
	b.WriteString("SIGNATURES\n\n")
	fmt.Fprintf(b, "_________________________________\n%s, %s\n\n",
		fieldOr(form, "fullName", PlaceholderName), roleLabel)

	b.WriteString("Signed in the presence of both witnesses, present at the same time:\n\n")

	witnesses := form.Persons(models.FieldWitnesses)
	for i := 0; i < 2 || i < len(witnesses); i++ {
		name := PlaceholderWitnessName
		address := PlaceholderAddress
		if i < len(witnesses) {
			if n := strings.TrimSpace(witnesses[i].Name); n != "" {
				name = n
			}
			if a := strings.TrimSpace(witnesses[i].Address); a != "" {
				address = a
			}
		}
		fmt.Fprintf(b, "_________________________________\nWitness %d: %s\nAddress: %s\n\n", i+1, name, address)
	}
}
