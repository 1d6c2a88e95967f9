// Package brotherql drives Brother QL and PT series label printers.
//
// It is the printer-control layer of the bridge: everything below the
// machine registry talks to printers exclusively through this package.
// The rest of the application treats it like an external library with
// three surfaces:
//
//   - Enumeration: supported printer models (Models, ModelByName) and
//     label media (Labels, LabelByID), used to populate setting choices.
//   - Conversion: Convert turns a label image into the raster command
//     stream understood by the printer (media/quality setup, margins,
//     optional TIFF packbits compression, raster rows, print command).
//   - Transport: Backend implementations deliver the command stream over
//     TCP (port 9100), USB (libusb via gousb) or a line printer device.
//
// # Usage
//
//	model, _ := brotherql.ModelByName("QL-820NWB")
//	label, _ := brotherql.LabelByID("62")
//	data, err := brotherql.Convert(img, brotherql.ConvertOptions{
//	    Model: model, Label: label, AutoCut: true, Rotate: 270,
//	})
//	backend, _ := brotherql.OpenBackend(ctx, "tcp://192.168.1.50")
//	defer backend.Close()
//	err = backend.Send(ctx, data)
package brotherql
