// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the Biblio question-answering
// service.
//
// The service exposes two endpoints used here:
//
//	GET /            reachability probe, any 2xx means online
//	GET /ask?q=...   retrieval query, JSON body
//
// # Key Types
//
//   - Client: HTTP client with timeouts and an optional rate limiter
//   - AskResponse: decoded /ask body (answer and/or retrieved passages)
//   - ClientError: typed error covering transport, timeout, status and decode failures
//
// # Usage
//
//	client := backend.NewClient()
//	if err := client.Ping(ctx); err != nil {
//	    // offline
//	}
//	text, err := client.Answer(ctx, "¿Quién escribió Rayuela?")
package backend
