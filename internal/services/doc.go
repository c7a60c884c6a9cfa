// Package services holds cross-cutting helpers shared by pipeline stages:
// sentinel error markers with status classification, and context keys for
// correlating logs with sessions and stages.
package services
