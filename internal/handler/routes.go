package handler

// APIV0Prefix is the canonical base path for the public read API.
// Keep a single source of truth to avoid path drift across handlers, tests and the SDK.
const APIV0Prefix = "/v0"

// HealthMessage is the fixed body of the root health check.
const HealthMessage = "API health check successful"
