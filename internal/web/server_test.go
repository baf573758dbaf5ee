// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veridoc/internal/config"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	return NewWebServer("8080", cfg).Router()
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])
}

func TestValidate_CorrectsFields(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/validate", ValidateRequest{
		Fields: map[string]string{"curp": "PEGJ85O1O1HDFRRL09"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotNil(t, resp.Result)

	assert.Equal(t, "PEGJ850101HDFRRL04", resp.Result.CorrectedData["curp"])
	assert.Nil(t, resp.Result.FraudAnalysis, "validate endpoint must not run fraud analysis")
}

func TestValidate_EmptyFields(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/validate", ValidateRequest{})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "fields")
}

func TestValidate_MalformedBody(t *testing.T) {
	handler := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/validate", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_ReturnsFraudReport(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/analyze", ValidateRequest{
		Fields: map[string]string{
			"curp": "PEGJ850101HDFRRL04",
			"sexo": "MUJER",
		},
		DocumentType: "INE",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotNil(t, resp.Result.FraudAnalysis)

	// Declared gender contradicts the CURP, so the report must flag it.
	report, err := json.Marshal(resp.Result.FraudAnalysis)
	require.NoError(t, err)
	assert.Contains(t, string(report), "gender_mismatch")
}

func TestAnalyze_Redact(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodPost, "/api/analyze", ValidateRequest{
		Fields: map[string]string{"curp": "PEGJ850101HDFRRL04"},
		Redact: true,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	assert.NotEqual(t, "PEGJ850101HDFRRL04", resp.Result.CorrectedData["curp"])
}

func TestUnknownRoute(t *testing.T) {
	rec := doRequest(t, newTestServer(t), http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
