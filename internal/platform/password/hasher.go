package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher は bcrypt によるパスワードハッシュ化を行います。
type Hasher struct {
	cost int
}

// NewHasher は指定コストの Hasher を生成します。コストが bcrypt の
// 許容範囲外の場合は DefaultCost(10)に落とします。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash は平文パスワードをソルト付きでハッシュ化します。
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hashed), nil
}

// Compare はハッシュと平文パスワードを照合します。
func (h *Hasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
