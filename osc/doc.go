// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

//Package osc encodes and decodes OpenSoundControl messages and bundles.
//
//This implementation is based on the Open Sound Control 1.0 Specification (http://opensoundcontrol.org/spec-1_0.html).
//
//Open Sound Control (OSC) is an open, transport-independent, message-based protocol developed for communication among computers,
//sound synthesizers, and other multimedia devices.
//
//Features
//
//- Supports OSC messages with the following TypeTags:
//
//	'i' (int32)
//	'f' (float32)
//	's' (string)
//	'b' ([]byte)
//	't' (Timetag)
//	'h' (int64)
//	'd' (float64)
//	'm' (MIDI)
//	'T' (true)
//	'F' (false)
//	'N' (nil)
//	'I' (Impulse)
//
//- Supports flat OSC bundles, including TimeTags
//
//- Every encoder takes the destination buffer and never writes past its length;
//every decoder checks each field against the end of the data.
//
//Packets
//
//The unit of transmission of OSC is an OSC Packet. An OSC packet consists of its contents, a contiguous block of binary data.
//The size of an OSC packet is always 32-bit aligned.
//
//OSC packets come in two flavors:
//
//OSC Messages: An OSC message consists of an OSC address and zero or more OSC arguments.
//
//OSC Bundles: An OSC Bundle consists of an OSC Timetag, followed by zero or more OSC bundle elements.
//This package only handles bundles whose elements are messages.
//
//Usage
//
//Encoding into a buffer:
//  buf := make([]byte, 1024)
//  n, err := osc.WriteMessage(buf, "/pot_1", "i", int32(42))
//
//Decoding:
//  m, err := osc.ParseMessage(buf[:n])
//  v, err := m.NextInt32()
//
//Bundles:
//  w, err := osc.NewBundleWriter(buf, osc.NewImmediateTimetag())
//  w.WriteMessage("/pot_1", "i", int32(42))
//  w.WriteMessage("/pot_2", "i", int32(7))
//  client.Send(w.Bytes())
//
//  r, err := osc.ParseBundle(w.Bytes())
//  var m osc.MessageReader
//  for ok, err := r.NextMessage(&m); ok; ok, err = r.NextMessage(&m) {
//      fmt.Println(&m)
//  }
//
//The Message and Bundle types offer the same as values:
//  client, _ := osc.Dial("localhost:8765")
//  msg := osc.NewMessage("/osc/address")
//  msg.Append(int32(111))
//  msg.Append(true)
//  msg.Append("hello")
//  client.SendPacket(msg)
package osc
