package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const fullTransaction = `{"Time":0,"V1":-1.36,"V2":-0.07,"V3":2.54,"V4":1.38,"V5":-0.34,"V6":0.46,"V7":0.24,"V8":0.1,"V9":0.36,
"V10":0.09,"V11":-0.55,"V12":-0.62,"V13":-0.99,"V14":-0.31,"V15":1.47,"V16":-0.47,"V17":0.21,"V18":0.03,"V19":0.4,
"V20":0.25,"V21":-0.02,"V22":0.28,"V23":-0.11,"V24":0.07,"V25":0.13,"V26":-0.19,"V27":0.13,"V28":-0.02,"Amount":149.62}`

func TestReadTransactionValidates(t *testing.T) {
	tx, err := readTransaction(strings.NewReader(fullTransaction), "-")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *tx.Amount != 149.62 {
		t.Fatalf("unexpected amount %v", *tx.Amount)
	}

	_, err = readTransaction(strings.NewReader(`{"Time":0,"Amount":0}`), "-")
	if err == nil || !strings.Contains(err.Error(), "V1 is required") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPredictCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"prediction":0,"is_fraud":false,"fraud_probability":0.0327,"risk_level":"low"}`))
	}))
	defer srv.Close()

	cmd := predictCmd()
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("api-url", "", "")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(fullTransaction))
	cmd.SetArgs([]string{"--api-url", srv.URL})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `"risk_level": "low"`) {
		t.Fatalf("unexpected output %s", out.String())
	}
}
