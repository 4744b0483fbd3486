// Package io provides JSON import and export for point sets and peeled layers.
//
// # Point Set Format
//
// A point set document records the frame it was generated in, the neighbor
// range it was last viewed with, and its nodes:
//
//	{
//	  "width": 800,
//	  "height": 600,
//	  "range": 60,
//	  "nodes": [
//	    {"x": 12.5, "y": 40.1, "id": 1},
//	    {"x": 80.0, "y": 33.7, "id": 2}
//	  ]
//	}
//
// Node ids must be unique. Neighbor lists are never stored; they are rebuilt
// from the range after loading.
//
// # Layers Format
//
// Peeling results are written as an ordered list of layers:
//
//	{
//	  "layers": [
//	    {
//	      "index": 0,
//	      "diameter": 60,
//	      "status": "ring",
//	      "closed": true,
//	      "anchor": 17,
//	      "edges": [{"from": 17, "to": 4}, ...],
//	      "on_ring": [4, 17, ...],
//	      "remaining": [1, 2, ...],
//	      "hull": [{"from": {"x": 0, "y": 1}, "to": {"x": 3, "y": 4}}, ...]
//	    }
//	  ]
//	}
//
// The hull is present only when it was requested. A final layer with status
// "no further layer" has no edges and lists every node it was given as
// remaining.
//
// # Import and Export
//
// [ReadJSON] and [WriteJSON] work on any reader or writer; [ImportJSON] and
// [ExportJSON] are file-based wrappers. The layer functions follow the same
// pattern. Decoding errors carry the INVALID_FORMAT code.
package io
