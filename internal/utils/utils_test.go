package utils

/*

go test -v ./internal/utils -count=1

*/

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestValidateCNPJ(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"11.222.333/0001-81", true},
		{"11222333000181", true},
		{"11222333000182", false}, // dígito errado
		{"00000000000000", false},
		{"1122233300018", false},
		{"xx", false},
	}
	for _, tc := range cases {
		if got := ValidateCNPJ(SanitizeCNPJ(tc.in)); got != tc.want {
			t.Fatalf("cnpj=%s want=%v got=%v", tc.in, tc.want, got)
		}
	}
}

func TestValidateCPF(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"529.982.247-25", true},
		{"111.444.777-35", true},
		{"529.982.247-24", false},
		{"111.111.111-11", false},
		{"123", false},
	}
	for _, tc := range cases {
		if got := ValidateCPF(SanitizeCPF(tc.in)); got != tc.want {
			t.Fatalf("cpf=%s want=%v got=%v", tc.in, tc.want, got)
		}
	}
}

func TestBCryptHasher(t *testing.T) {
	h := NewBCryptHasher(4) // custo mínimo para o teste ser rápido
	hash, err := h.Hash("123456")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "123456" || bcrypt.CompareHashAndPassword([]byte(hash), []byte("123456")) != nil {
		t.Fatal("hash não confere com a senha original")
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("errada")) == nil {
		t.Fatal("senha errada conferiu")
	}
	if _, err := h.Hash(""); !errors.Is(err, ErrSenhaVazia) {
		t.Fatalf("want ErrSenhaVazia, got %v", err)
	}
	if NewBCryptHasher(99).Cost != 10 {
		t.Fatal("custo fora da faixa deveria cair no default")
	}
}

func TestDecodeStrict(t *testing.T) {
	var dst struct {
		Tipo string `json:"tipo"`
	}
	if err := DecodeStrict(strings.NewReader(`{"tipo":"INICIO_TRABALHO"}`), &dst); err != nil || dst.Tipo != "INICIO_TRABALHO" {
		t.Fatalf("decode ok: %v %#v", err, dst)
	}

	err := DecodeStrict(strings.NewReader(`{"foo":1}`), &dst)
	if err == nil || FormatDecodeError(err) != "Campo desconhecido: foo." {
		t.Fatalf("unknown field: %v -> %q", err, FormatDecodeError(err))
	}

	err = DecodeStrict(strings.NewReader(`{`), &dst)
	if err == nil || FormatDecodeError(err) != "JSON malformado." {
		t.Fatalf("malformed: %v -> %q", err, FormatDecodeError(err))
	}

	err = DecodeStrict(strings.NewReader(``), &dst)
	if err == nil || FormatDecodeError(err) != "Corpo da requisição vazio." {
		t.Fatalf("empty: %v -> %q", err, FormatDecodeError(err))
	}

	if err := DecodeStrict(strings.NewReader(`{"tipo":"A"}{"tipo":"B"}`), &dst); err == nil {
		t.Fatal("expected error for trailing content")
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, 201, map[string]string{"status": "ok"})
	if rr.Code != 201 || rr.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("code=%d ct=%s", rr.Code, rr.Header().Get("Content-Type"))
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte(`"status":"ok"`)) {
		t.Fatalf("body=%s", rr.Body.String())
	}
}
