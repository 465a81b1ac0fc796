package models

// ResultSummary is the per-result entry of a distribution batch report.
// Field names match the public API contract consumed by the admin panel.
type ResultSummary struct {
	ResultID          string   `json:"resultado_id"`
	GameID            string   `json:"jog_id"`
	DrawnNumbers      []string `json:"numeros_sorteados"`
	WinnersTenPoints  int      `json:"total_ganhadores_10_pontos"`
	WinnersNinePoints int      `json:"total_ganhadores_9_pontos"`
	WinnersFewer      int      `json:"total_ganhadores_menos_pontos"`
	PrizeTotal        string   `json:"premio_total"`
	Error             string   `json:"erro,omitempty"`
}

// DistributionReport aggregates one distribution run.
type DistributionReport struct {
	Message   string          `json:"message"`
	Processed []ResultSummary `json:"processados"`
}
