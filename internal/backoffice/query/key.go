package query

import (
	"fmt"
	"net/url"
	"strings"
)

// Key identifica uma leitura: (entidade, filtros..., página).
// Mudar qualquer parte gera outra entrada no cache.
type Key []string

func NewKey(entity string, parts ...any) Key {
	k := make(Key, 0, len(parts)+1)
	k = append(k, entity)
	for _, p := range parts {
		k = append(k, fmt.Sprint(p))
	}
	return k
}

func (k Key) Entity() string {
	if len(k) == 0 {
		return ""
	}
	return k[0]
}

// String é a forma canônica; cada parte é escapada, então ":" só aparece como separador
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, p := range k {
		parts[i] = url.QueryEscape(p)
	}
	return strings.Join(parts, ":")
}

// HasPrefix indica se p é uma sequência inicial de k
func (k Key) HasPrefix(p Key) bool {
	if len(p) > len(k) {
		return false
	}
	for i := range p {
		if k[i] != p[i] {
			return false
		}
	}
	return true
}

func matchesPrefix(key, prefix string) bool {
	return key == prefix || strings.HasPrefix(key, prefix+":")
}
