package query

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Token é a versão de uma linha: hash do JSON canônico do registro.
// Formulários de edição/remoção carregam o token da linha que foi exibida.
func Token(row any) string {
	b, err := json.Marshal(row)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:12])
}
