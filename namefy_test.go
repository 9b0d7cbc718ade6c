package bitfields

import "testing"

func TestToDBName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"BankAccount", "bank_account"},
		{"HTTPProxy", "http_proxy"},
		{"OrderID", "order_id"},
		{"seller", "seller"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToDBName(tt.name); got != tt.want {
				t.Errorf("ToDBName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestTableNameOf(t *testing.T) {
	if got := TableNameOf("BankAccount"); got != "bank_accounts" {
		t.Errorf("TableNameOf() = %q, want %q", got, "bank_accounts")
	}
}
