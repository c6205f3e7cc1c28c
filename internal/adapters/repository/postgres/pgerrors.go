package postgres

// PostgreSQL のエラーコード(クラス 23 整合性制約違反)。
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)
