package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store принимает поток байт и возвращает непрозрачную ссылку на артефакт.
// Доменный слой не знает, где артефакт лежит физически.
type Store interface {
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	Remove(ctx context.Context, ref string) error
}

// ObjectKey строит имя объекта из исходного имени файла: метка времени,
// uuid и очищенное базовое имя. Повторная загрузка того же файла никогда
// не перезаписывает предыдущий объект.
func ObjectKey(filename string) string {
	base := sanitize(filepath.Base(filename))
	ts := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s_%s_%s", ts, uuid.NewString(), base)
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
