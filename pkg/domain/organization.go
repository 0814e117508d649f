package domain

type Organization struct {
	ID      string
	Name    string
	Details map[string]string
}
