package employee

import "errors"

var (
	ErrInvalidID                 = errors.New("employee: invalid id")
	ErrInvalidEmployeeCode       = errors.New("employee: invalid employee code")
	ErrInvalidUsername           = errors.New("employee: invalid username")
	ErrInvalidEmail              = errors.New("employee: invalid email")
	ErrInvalidPassword           = errors.New("employee: invalid password")
	ErrInvalidName               = errors.New("employee: invalid name")
	ErrInvalidRole               = errors.New("employee: invalid role")
	ErrInvalidStatus             = errors.New("employee: invalid status")
	ErrInvalidDepartment         = errors.New("employee: invalid department reference")
	ErrInvalidPosition           = errors.New("employee: invalid position reference")
	ErrEmployeeNotFound          = errors.New("employee: not found")
	ErrEmailAlreadyExists        = errors.New("employee: email already exists")
	ErrEmployeeCodeAlreadyExists = errors.New("employee: employee code already exists")
)
