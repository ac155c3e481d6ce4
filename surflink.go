// Package surflink extracts link references from HTML, XML and Markdown
// markup and classifies each one by provenance, content type and role
// (hyperlink, resource, stylesheet, script, image, audio, video, webpage).
//
// This package contains domain types, interfaces and the classification
// engine following Ben Johnson's Standard Package Layout. Implementations of
// external collaborators live in subdirectories named after their primary
// dependency (e.g., goquery/, etree/, sqlite/).
package surflink
