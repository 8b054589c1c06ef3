package iocli

import "io"

// IO абстрагирует ввод и вывод CLI, чтобы команды можно было тестировать
type IO interface {
	io.Writer
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Confirm(prompt string) (bool, error)
}
