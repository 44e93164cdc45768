// Package model defines the model-invocation collaborator contract used by
// the agent loop, a normalized Request/Response pair shared by all provider
// adapters, and a scripted in-memory implementation for tests.
//
// Provider adapters live in subpackages (anthropic, openai) and translate
// the normalized structures into vendor SDK calls.
package model
