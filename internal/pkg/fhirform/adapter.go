package fhirform

// Adapter is the contract every resource form adapter satisfies: a
// bidirectional, validated mapping between a FHIR resource type R and
// its flat form-value representation F. Implementations are stateless
// and perform no I/O, so a single adapter value is safe to share across
// any number of concurrent form flows.
type Adapter[R any, F any] interface {
	// ToFormValues flattens a fetched resource into form values. It is
	// total: every field has a default and missing optional groups come
	// back as empty collections.
	ToFormValues(resource *R) *F

	// ToResource builds a resource from submitted form values. The
	// resourceType tag is always set; the id is set only when
	// existingID is non-empty, so create flows never synthesize one.
	// Degenerate nested entries are filtered out.
	ToResource(form *F, existingID string) *R

	// DefaultFormValues returns the well-typed starting state for a
	// create flow.
	DefaultFormValues() *F

	// ValidateFormValues reports whether the form passes the
	// resource-specific required-field and cross-field checks.
	ValidateFormValues(form *F) bool

	// ValidationErrors returns a field-keyed message map for every
	// failing check. An empty map means the form is valid;
	// ValidateFormValues is equivalent to len(ValidationErrors) == 0.
	ValidationErrors(form *F) map[string]string
}
