// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, codes, severity and
//              serialization.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2025-03-02 v0.2.0: Tokenizer codes

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}
	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "context",
			wantNil: true,
		},
		{
			name:    "wrap standard error",
			err:     errors.New("boom"),
			message: "context",
			wantMsg: "context: boom",
		},
		{
			name:    "wrap mdw error",
			err:     New("inner").WithCode(CodeSyntax),
			message: "outer",
			wantMsg: "outer: inner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if !errors.Is(got, tt.err) {
				t.Error("wrapped error should match its cause with errors.Is")
			}
		})
	}
}

func TestWrap_InheritsCodeAndDetails(t *testing.T) {
	inner := New("closing quote missing").
		WithCode(CodeUnterminated).
		WithDetail("position", 4).
		WithOperation("argparse.Tokenize")

	outer := Wrap(inner, "tokenize failed")

	if outer.Code() != CodeUnterminated {
		t.Errorf("Code() = %v, want %v", outer.Code(), CodeUnterminated)
	}
	if outer.Severity() != SeverityLow {
		t.Errorf("Severity() = %v, want %v", outer.Severity(), SeverityLow)
	}
	if v, ok := outer.Detail("position"); !ok || v != 4 {
		t.Errorf("Detail(position) = %v, %v", v, ok)
	}
	if outer.Operation() != "argparse.Tokenize" {
		t.Errorf("Operation() = %q", outer.Operation())
	}
}

func TestWithCode_Severity(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeSyntax, SeverityLow},
		{CodeUnterminated, SeverityLow},
		{CodeInputTooLong, SeverityLow},
		{CodeConfigError, SeverityMedium},
		{CodeStorage, SeverityHigh},
		{CodeInternal, SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := New("x").WithCode(tt.code)
			if err.Severity() != tt.want {
				t.Errorf("Severity() = %v, want %v", err.Severity(), tt.want)
			}
		})
	}
}

func TestWrap_InheritsSeverity(t *testing.T) {
	err := Wrap(New("x").WithCode(CodeStorage), "outer")
	if err.Severity() != SeverityHigh {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityHigh)
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New("inner").WithCode(CodeMalformedToken))

	if !HasCode(err, CodeMalformedToken) {
		t.Error("HasCode should find the code through fmt.Errorf wrapping")
	}
	if HasCode(errors.New("plain"), CodeMalformedToken) {
		t.Error("HasCode should be false for plain errors")
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode should default to CodeUnknown")
	}
	if GetSeverity(errors.New("plain")) != SeverityMedium {
		t.Error("GetSeverity should default to SeverityMedium")
	}
}

func TestString(t *testing.T) {
	err := New("bad value").
		WithCode(CodeSyntax).
		WithDetail("position", 3).
		WithDetail("char", "}").
		WithOperation("tokenize")

	s := err.String()
	for _, want := range []string{"Error: bad value", "Code: SYNTAX", "Severity: low", "Operation: tokenize", "Details: {char=}, position=3}"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q in:\n%s", want, s)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := Wrap(errors.New("root"), "failed").WithCode(CodeStorage).WithDetail("path", "/tmp/h.db")

	data, jerr := json.Marshal(err)
	if jerr != nil {
		t.Fatalf("json.Marshal() error = %v", jerr)
	}

	var decoded map[string]interface{}
	if jerr := json.Unmarshal(data, &decoded); jerr != nil {
		t.Fatalf("json.Unmarshal() error = %v", jerr)
	}

	if decoded["code"] != "STORAGE_ERROR" {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["severity"] != "high" {
		t.Errorf("severity = %v", decoded["severity"])
	}
	if decoded["cause"] != "root" {
		t.Errorf("cause = %v", decoded["cause"])
	}
}
