package services

import "testing"

func TestGenerateSpaceID(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{"Vendas", "vendas"},
		{"Operações", "operacoes"},
		{"Sucesso do Cliente", "sucesso-do-cliente"},
		{"  P&D / Inovação  ", "p-d-inovacao"},
		{"Área Técnica", "area-tecnica"},
		{"---", ""},
		{"Time 2024", "time-2024"},
	}

	for _, c := range cases {
		if got := GenerateSpaceID(c.label); got != c.want {
			t.Errorf("GenerateSpaceID(%q) = %q, want %q", c.label, got, c.want)
		}
	}
}

func TestGenerateSpaceIDStable(t *testing.T) {
	// The same label always slugifies to the same id, which is what makes
	// duplicate detection by id meaningful
	a := GenerateSpaceID("Comercial São Paulo")
	b := GenerateSpaceID("Comercial São Paulo")
	if a != b {
		t.Errorf("slug not stable: %q vs %q", a, b)
	}
	if a != "comercial-sao-paulo" {
		t.Errorf("got %q, want %q", a, "comercial-sao-paulo")
	}
}
