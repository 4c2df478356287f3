package main

type AnalyzeRequest struct {
	Rows  []string `json:"rows" binding:"required"`
	Turn  string   `json:"turn"` // computer (default) or human
	Depth int      `json:"depth"`
}

type AnalyzeResponse struct {
	RequestID string `json:"requestId"`
	Column    int    `json:"column"`
	Row       int    `json:"row"`
	Score     int    `json:"score"`
	Fallback  bool   `json:"fallback"`
	Tally     []int  `json:"tally"`
	Nodes     int    `json:"nodes"`
	Depth     int    `json:"depth"`
	ElapsedMs int64  `json:"elapsedMs"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Winner string `json:"winner,omitempty"`
}
