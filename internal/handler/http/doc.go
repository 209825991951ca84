// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as authentication, request tracing, access
// logging, panic recovery, login rate limiting and compression are handled in
// this package before requests are delegated to the service layer. Every
// response uses the JSON envelope from the models package.
package http
