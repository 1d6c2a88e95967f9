// Package printing turns label images into print jobs.
//
// A print request names a registered machine and carries a PNG or JPEG
// image. The service maps the machine's settings onto the printer-control
// conversion options, converts the image to the raster command stream,
// and sends it over the machine's transport. Every attempt is recorded as
// a PrintJob; failures carry the underlying error text verbatim.
//
// When archiving is enabled, the rendered label is copied to object
// storage under jobs/<id>.png before printing, so failed prints can be
// inspected and reprinted.
package printing
