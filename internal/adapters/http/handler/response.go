package handler

// apiResponse はこのシステムの API が返すレスポンスエンベロープです。
// フィールド名は既存クライアントとの互換のため原形のままです。
type apiResponse struct {
	Status         bool   `json:"Status"`
	ResultOnDb     any    `json:"ResultOnDb,omitempty"`
	TotalCountOnDb int64  `json:"TotalCountOnDb,omitempty"`
	MethodOnDb     string `json:"MethodOnDb,omitempty"`
	Message        string `json:"Message"`
}
