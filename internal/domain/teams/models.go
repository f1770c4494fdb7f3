package teams

// Team is a franchise as listed in the league standings.
type Team struct {
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
	CommonName   string `json:"commonName"`
}
