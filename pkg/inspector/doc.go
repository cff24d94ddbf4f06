// Package inspector serves a built scene over HTTP for debugging.
//
// Routes:
//
//	GET  /health                 liveness
//	GET  /views                  serializable state of every view
//	GET  /views/{id}             view state, host node state and sheets
//	GET  /views/{id}/export      encoded export (?format=raster|vector&hidpi=true)
//	POST /views/{id}/resize      {"width": 300, "height": 200}
//	POST /viewport               {"width": 1024, "height": 768}
//	GET  /events                 websocket stream of finish events
//	GET  /metrics                Prometheus metrics
//
// Views are single-threaded; the server holds one lock around every call
// into the scene.
package inspector
