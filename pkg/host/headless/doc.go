// Package headless is an in-memory host.Surface with scripted geometry.
//
// Geometry is set explicitly (SetRect, Resize, SetDisplayed). Each change
// queues resize notifications for the affected watchers; nothing is
// delivered until Flush, which plays the role of the next event-loop turn.
// Several changes to the same node before a Flush coalesce into a single
// notification.
//
// A node counts as displayed when it is flagged displayed, every mounted
// ancestor is displayed, its inline display is not "none", and none of its
// applied stylesheets hides :host with display: none.
package headless
