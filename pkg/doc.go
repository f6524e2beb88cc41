// Package pkg provides the core libraries for Ontomat hierarchy analysis.
//
// # Overview
//
// Ontomat materializes ontology class hierarchies as dense boolean adjacency
// matrices. The pkg directory is organized into four main areas:
//
//  1. [hierarchy] - Domain logic (class index, matrices, closure, search)
//  2. [infra] - Infrastructure (caching, storage, observability)
//  3. [source] - Snapshot providers (JSON and TOML files)
//  4. [pipeline] - Orchestration (load → construct → render)
//
// # Architecture
//
// The typical data flow through Ontomat:
//
//	Snapshot File (JSON/TOML)
//	         ↓
//	source (Provider)
//	         ↓
//	hierarchy (Index + Matrices + Closure)
//	         ↓
//	render (DOT/SVG)
//
// The pipeline package orchestrates these stages and caches each one, so
// repeated runs against an unchanged snapshot are cheap. The store package
// persists constructed hierarchies for the HTTP API.
package pkg
