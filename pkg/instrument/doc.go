// Package instrument records element lifecycle metrics with Prometheus and
// traces render, resize and export with OpenTelemetry.
//
// Metrics collected:
//   - elementview_renders_total: renders by element kind
//   - elementview_render_duration_seconds: render duration by kind
//   - elementview_resizes_total: resize notifications handled, by kind
//   - elementview_finish_total: finish signals by kind and cause
//   - elementview_unknown_style_properties_total: style names no vendor
//     variant of which the host recognized
//   - elementview_exports_total: exports by kind, format and status
//   - elementview_live_views: views between Initialize and Teardown
//
// Every method is safe on a nil *Recorder, which records nothing.
package instrument
