// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package explainer is the HTTP client for the code-explanation service.
//
// A query is posted as {"message": query}; the service answers with an
// explanation from its code explainer and a reference from its query
// detector:
//
//	{
//	  "responseCodeExplainer": {"textResponse": "..."},
//	  "responseQueryDetector": {"textResponse": "..."}
//	}
//
// # Errors
//
// Every failure is one of three typed errors:
//
//   - *TransportError: the request never produced a response
//   - *StatusError: the service answered with a non-2xx status
//   - *ProtocolError: the body could not be decoded or lacked a field
//
// Classify maps any error to its Kind for logging.
//
// # Usage
//
//	client := explainer.NewClient("http://localhost:8000").
//	    WithTimeout(30 * time.Second)
//	answer, err := client.Explain(ctx, "what does main.go do?")
package explainer
