package domain

// Exercise is one entry of the exercise catalog, as returned by the upstream
// exercises API or the built-in fallback list. Catalog entries are not stored
// in the database; they are cached and served as-is.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Equipment   string `json:"equipment"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	MuscleGroup string `json:"muscleGroup"`
	Type        string `json:"type,omitempty"`
}
