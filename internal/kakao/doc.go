// Package kakao models the Kakao i Open Builder skill response (v2.0).
//
// Elements are plain structs. Nothing is checked while a response is being
// assembled; Validate reports the first contract violation and Render
// validates before building the wire value, so a failed render never yields
// partial output. Errors wrap one of the Err* kinds.
package kakao
