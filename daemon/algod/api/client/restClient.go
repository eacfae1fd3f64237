// Copyright (C) 2019-2025 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-querystring/query"

	"github.com/algorand/go-algokit/crypto"
	"github.com/algorand/go-algokit/daemon/algod/api/model"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/data/transactions"
	"github.com/algorand/go-algokit/data/transactions/logic"
	"github.com/algorand/go-algokit/logging"
	"github.com/algorand/go-algokit/protocol"
	"github.com/algorand/go-algokit/serr"
)

const (
	authHeader          = "X-Algo-API-Token"
	healthCheckEndpoint = "/health"
	maxRawResponseBytes = 50e6

	msgpackContentType = "application/msgpack"
	binaryContentType  = "application/x-binary"
)

// rawRequestPaths is a set of paths where the body should not be urlencoded
var rawRequestPaths = map[string]bool{
	"/v2/transactions":          true,
	"/v2/teal/compile":          true,
	"/v2/transactions/simulate": true,
}

// responseFormat selects how submitForm decodes a successful response body.
type responseFormat int

const (
	decodeJSON responseFormat = iota
	decodeMsgpack
	decodeRaw
)

// unauthorizedRequestError is generated when we receive 401 error from the server. This error includes the inner error
// as well as the likely parameters that caused the issue.
type unauthorizedRequestError struct {
	errorString string
	apiToken    string
	url         string
}

// Error format an error string for the unauthorizedRequestError error.
func (e unauthorizedRequestError) Error() string {
	return fmt.Sprintf("Unauthorized request to `%s` when using token `%s` : %s", e.url, e.apiToken, e.errorString)
}

// Is makes errors.Is(err, serr.ErrNode) hold.
func (e unauthorizedRequestError) Is(target error) bool {
	return target == serr.ErrNode
}

// HTTPError is generated when we receive an unhandled error from the server. This error contains the error string.
type HTTPError struct {
	StatusCode  int
	Status      string
	ErrorString string
	Data        map[string]any
}

// Error formats an error string.
func (e HTTPError) Error() string {
	return fmt.Sprintf("HTTP %s: %s", e.Status, e.ErrorString)
}

// Is makes errors.Is(err, serr.ErrNode) hold.
func (e HTTPError) Is(target error) bool {
	return target == serr.ErrNode
}

// IsNotFound reports whether err is a 404 returned by the node.
func IsNotFound(err error) bool {
	var httpErr HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// RestClient manages the REST interface for a calling user.
type RestClient struct {
	serverURL url.URL
	apiToken  string
	timeout   time.Duration
	log       logging.Logger
}

// MakeRestClient is the factory for constructing a RestClient for a given endpoint
func MakeRestClient(url url.URL, apiToken string) RestClient {
	return RestClient{
		serverURL: url,
		apiToken:  apiToken,
		log:       logging.Base(),
	}
}

// WithTimeout returns a copy of the client whose requests are bounded by d.
// Zero means no bound beyond the caller's context.
func (client RestClient) WithTimeout(d time.Duration) RestClient {
	client.timeout = d
	return client
}

// WithLogger returns a copy of the client logging to log.
func (client RestClient) WithLogger(log logging.Logger) RestClient {
	client.log = log
	return client
}

// filterASCII filter out the non-ascii printable characters out of the given input string.
// It's used as a security qualifier before adding network provided data into an error message.
// The function allows only characters in the range of [32..126], which excludes all the
// control character, new lines, deletion, etc. All the alpha numeric and punctuation characters
// are included in this range.
func filterASCII(unfilteredString string) (filteredString string) {
	for i, r := range unfilteredString {
		if int(r) >= 0x20 && int(r) <= 0x7e {
			filteredString += string(unfilteredString[i])
		}
	}
	return
}

// extractError checks if the response signifies an error (for now, StatusCode != 200 or StatusCode != 201).
// If so, it returns the error.
// Otherwise, it returns nil.
func extractError(resp *http.Response) error {
	if resp.StatusCode == 200 || resp.StatusCode == 201 {
		return nil
	}

	errorBuf, _ := io.ReadAll(resp.Body) // ignore returned error
	var errorJSON model.ErrorResponse
	decodeErr := protocol.NewJSONDecoderLenient(bytes.NewReader(errorBuf)).Decode(&errorJSON)

	var errorString string
	var data map[string]any
	if decodeErr == nil && errorJSON.Message != "" {
		errorString = errorJSON.Message
		if errorJSON.Data != nil {
			data = *errorJSON.Data
		}
	} else {
		errorString = string(errorBuf)
	}
	errorString = filterASCII(errorString)

	if resp.StatusCode == http.StatusUnauthorized {
		apiToken := resp.Request.Header.Get(authHeader)
		return unauthorizedRequestError{errorString, apiToken, resp.Request.URL.String()}
	}

	return HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, ErrorString: errorString, Data: data}
}

// mergeRawQueries merges two raw queries, appending an "&" if both are non-empty
func mergeRawQueries(q1, q2 string) string {
	if q1 == "" || q2 == "" {
		return q1 + q2
	}
	return q1 + "&" + q2
}

// submitForm is a helper used for submitting (ex.) GETs and POSTs to the server.
// Raw request paths send body as is with contentType; everything else is url encoded.
func (client RestClient) submitForm(
	ctx context.Context, response interface{}, path string, params interface{}, body []byte,
	contentType string, requestMethod string, format responseFormat) error {

	var err error
	queryURL := client.serverURL
	queryURL.Path = path

	var bodyReader io.Reader
	var v url.Values

	if params != nil {
		v, err = query.Values(params)
		if err != nil {
			return serr.Wrap(serr.ErrValidation, err, "query parameters")
		}
	}

	if requestMethod == http.MethodPost && rawRequestPaths[path] {
		if body == nil {
			return serr.Validationf("raw request to %s requires a body", path)
		}
		bodyReader = bytes.NewReader(body)
	}

	queryURL.RawQuery = mergeRawQueries(queryURL.RawQuery, v.Encode())

	if client.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, requestMethod, queryURL.String(), bodyReader)
	if err != nil {
		return serr.Wrap(serr.ErrNode, err, "building request")
	}
	if bodyReader != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	// If we add another endpoint that does not require auth, we should add a
	// requiresAuth argument to submitForm rather than checking here
	if path != healthCheckEndpoint {
		req.Header.Set(authHeader, client.apiToken)
	}

	client.log.Debugf("algod request %s %s", requestMethod, queryURL.Path)

	httpClient := &http.Client{}
	resp, err := httpClient.Do(req)
	if err != nil {
		return serr.Wrap(serr.ErrNode, err, fmt.Sprintf("%s %s", requestMethod, path))
	}

	// Ensure response isn't too large
	resp.Body = http.MaxBytesReader(nil, resp.Body, maxRawResponseBytes)
	defer resp.Body.Close()

	err = extractError(resp)
	if err != nil {
		client.log.Debugf("algod request %s %s failed: %v", requestMethod, queryURL.Path, err)
		return err
	}

	if response == nil {
		return nil
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return serr.Wrap(serr.ErrNode, err, "reading response")
	}

	switch format {
	case decodeJSON:
		err = protocol.NewJSONDecoderLenient(bytes.NewReader(bodyBytes)).Decode(response)
	case decodeMsgpack:
		err = protocol.DecodeLenient(bodyBytes, response)
	default:
		raw, ok := response.(*[]byte)
		if !ok {
			return serr.Validationf("can only decode raw response into *[]byte")
		}
		*raw = bodyBytes
	}
	if err != nil {
		return serr.Wrap(serr.ErrDecoding, err, fmt.Sprintf("decoding response of %s", path))
	}
	return nil
}

// get performs a GET request to the specific path against the server
func (client RestClient) get(ctx context.Context, response interface{}, path string, params interface{}) error {
	return client.submitForm(ctx, response, path, params, nil, "", http.MethodGet, decodeJSON)
}

// getMsgpack behaves identically to get but asks for and decodes a msgpack response.
func (client RestClient) getMsgpack(ctx context.Context, response interface{}, path string) error {
	return client.submitForm(ctx, response, path, formatParams{Format: "msgpack"}, nil, "", http.MethodGet, decodeMsgpack)
}

// post sends body to a raw request path.
func (client RestClient) post(ctx context.Context, response interface{}, path string, params interface{}, body []byte, contentType string, format responseFormat) error {
	return client.submitForm(ctx, response, path, params, body, contentType, http.MethodPost, format)
}

type formatParams struct {
	Format string `url:"format,omitempty"`
}

type compileParams struct {
	Sourcemap bool `url:"sourcemap,omitempty"`
}

// HealthCheck does a health check on the potentially running node,
// returning an error if the API is down
func (client RestClient) HealthCheck(ctx context.Context) error {
	return client.submitForm(ctx, nil, healthCheckEndpoint, nil, nil, "", http.MethodGet, decodeJSON)
}

// Status retrieves the NodeStatus from the running node
// the NodeStatus includes data like the consensus version and current round
func (client RestClient) Status(ctx context.Context) (response model.NodeStatus, err error) {
	err = client.get(ctx, &response, "/v2/status", nil)
	return
}

// StatusAfterBlock returns the node status after waiting for the given
// round+1. The node answers after about a minute regardless of whether the
// round was reached.
func (client RestClient) StatusAfterBlock(ctx context.Context, round basics.Round) (response model.NodeStatus, err error) {
	err = client.get(ctx, &response, fmt.Sprintf("/v2/status/wait-for-block-after/%d", round), nil)
	return
}

// SuggestedParams gets the suggested transaction parameters
func (client RestClient) SuggestedParams(ctx context.Context) (response model.TransactionParams, err error) {
	err = client.get(ctx, &response, "/v2/transactions/params", nil)
	return
}

// SendRawTransaction gets a SignedTxn and broadcasts it to the network
func (client RestClient) SendRawTransaction(ctx context.Context, txn transactions.SignedTxn) (response model.PostTransactionsResponse, err error) {
	err = client.post(ctx, &response, "/v2/transactions", nil, protocol.Encode(&txn), binaryContentType, decodeJSON)
	return
}

// SendRawTransactionGroup gets a SignedTxn group and broadcasts it to the network
func (client RestClient) SendRawTransactionGroup(ctx context.Context, txgroup []transactions.SignedTxn) (response model.PostTransactionsResponse, err error) {
	if len(txgroup) == 0 {
		return response, serr.Validationf("empty transaction group")
	}
	err = client.post(ctx, &response, "/v2/transactions", nil, transactions.EncodeSignedTxns(txgroup), binaryContentType, decodeJSON)
	return
}

// PendingTransactionInformation gets information about a recently issued
// transaction. The response is requested in msgpack so that the embedded
// signed transaction decodes into its canonical form.
func (client RestClient) PendingTransactionInformation(ctx context.Context, transactionID string) (response model.PendingTransactionResponse, err error) {
	transactionID = url.PathEscape(transactionID)
	err = client.getMsgpack(ctx, &response, "/v2/transactions/pending/"+transactionID)
	return
}

// RawSimulate posts msgpack encoded request bytes to the simulate endpoint and
// returns the msgpack encoded result.
func (client RestClient) RawSimulate(ctx context.Context, data []byte) (response []byte, err error) {
	err = client.post(ctx, &response, "/v2/transactions/simulate", formatParams{Format: "msgpack"}, data, msgpackContentType, decodeRaw)
	return
}

// Simulate simulates a transaction group.
func (client RestClient) Simulate(ctx context.Context, request model.SimulateRequest) (response model.SimulateResponse, err error) {
	raw, err := client.RawSimulate(ctx, protocol.Encode(&request))
	if err != nil {
		return
	}
	if err = protocol.DecodeLenient(raw, &response); err != nil {
		err = serr.Wrap(serr.ErrDecoding, err, "simulate response")
	}
	return
}

// Compile compiles the given program and returned the compiled program
func (client RestClient) Compile(ctx context.Context, program []byte, useSourceMap bool) (compiledProgram []byte, programHash crypto.Digest, sourceMap *logic.SourceMap, err error) {
	var compileResponse model.CompileResponse
	err = client.post(ctx, &compileResponse, "/v2/teal/compile", compileParams{Sourcemap: useSourceMap}, program, "text/plain", decodeJSON)
	if err != nil {
		return nil, crypto.Digest{}, nil, err
	}

	var program64 BytesBase64
	if err = program64.UnmarshalText([]byte(compileResponse.Result)); err != nil {
		return nil, crypto.Digest{}, nil, serr.Wrap(serr.ErrDecoding, err, "compiled program")
	}
	var hash ChecksumAddress
	if err = hash.UnmarshalText([]byte(compileResponse.Hash)); err != nil {
		return nil, crypto.Digest{}, nil, serr.Wrap(serr.ErrDecoding, err, "program hash")
	}

	if useSourceMap {
		if compileResponse.Sourcemap == nil {
			return nil, crypto.Digest{}, nil, serr.Nodef("requested source map but none was returned")
		}
		var sourceMapJSON []byte
		sourceMapJSON, err = json.Marshal(*compileResponse.Sourcemap)
		if err != nil {
			return nil, crypto.Digest{}, nil, serr.Wrap(serr.ErrDecoding, err, "source map")
		}
		var sm logic.SourceMap
		if err = json.Unmarshal(sourceMapJSON, &sm); err != nil {
			return nil, crypto.Digest{}, nil, serr.Wrap(serr.ErrDecoding, err, "source map")
		}
		sourceMap = &sm
	}

	return program64, crypto.Digest(hash), sourceMap, nil
}
