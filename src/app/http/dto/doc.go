// Package dto contains Data Transfer Objects for HTTP requests and responses.
//
// DTOs are separate from domain entities to:
//   - Control what data is exposed in the API
//   - Handle JSON serialization/deserialization
//   - Add validation tags for request binding
//
// Naming convention:
//   - Request types: <Action><Resource>Request (e.g., CreateDomainRequest)
//   - Response types: <Resource>Response (e.g., DomainResponse)
//
// Instruction bodies are not DTOs: they are decoded by the codec package so
// HTTP, the CLI and the genesis loader share one wire form.
package dto
