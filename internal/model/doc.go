package model

// Package model defines domain data structures used across the app: the
// course/chapter/video tree scraped from the platform, per-video download
// tasks, and status enums with explicit state transitions.
