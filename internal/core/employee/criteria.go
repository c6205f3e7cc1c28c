package employee

import "strings"

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// ListCriteria は一覧取得のフィルタとページングを表します。リクエスト
// スコープの値であり永続化されません。Limit に上限は設けていないため、
// 呼び出し側(HTTP ハンドラ)で必要に応じて丸めてください。
type ListCriteria struct {
	Search       string
	DepartmentID *int64
	PositionID   *int64
	Role         *Role
	Status       *Status
	Page         int
	Limit        int
}

// Normalize はページングを正の値に矯正し、フィルタ値を検証した
// コピーを返します。Page / Limit が 0 以下の場合は既定値
// (1 ページ目・10 件)に落とします。
func (c ListCriteria) Normalize() (ListCriteria, error) {
	c.Search = strings.TrimSpace(c.Search)

	if c.Role != nil && !IsValidRole(*c.Role) {
		return ListCriteria{}, ErrInvalidRole
	}
	if c.Status != nil && !IsValidStatus(*c.Status) {
		return ListCriteria{}, ErrInvalidStatus
	}

	if c.Page <= 0 {
		c.Page = defaultPage
	}
	if c.Limit <= 0 {
		c.Limit = defaultPageSize
	}

	return c, nil
}

// Offset は LIMIT 句と対になる読み飛ばし件数を返します。
func (c ListCriteria) Offset() int {
	return (c.Page - 1) * c.Limit
}
