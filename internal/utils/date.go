package utils

import (
	"fmt"
	"time"
)

var months = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDate renders t as "19 de outubro de 2026".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), months[t.Month()-1], t.Year())
}

// FormatDateTime renders t as "19/10/2026 14:05".
func FormatDateTime(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
