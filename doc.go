// Package twiki2moin converts TWiki pages to MoinMoin pages.
//
// # Quick Start
//
// Convert markup directly:
//
//	moin := twiki2moin.Convert("---+ Title\n[[WebHome][Home]]", "Main")
//	// "= Title =\n[[Main/WebHome|Home]]"
//
// Or convert raw page files, which handles decoding and metadata:
//
//	conv, err := twiki2moin.NewConverter(twiki2moin.WithEncoding(twiki2moin.EncodingAuto))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, twiki2moin.Input{
//	    Source: raw,
//	    Prefix: "Main",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// result.Text is the Moin page, result.Attachments the files to copy.
//
// # Conversion Pipeline
//
// The conversion applies these stages in order:
//
//  1. TWiki variables (%TOC%, %ATTACHURL%/file, ...); !%VAR% is left alone
//  2. %META:...% lines removed, line count kept
//  3. [[target][label]] links and, with a prefix, WikiWords
//  4. emphasis, verbatim blocks, lists, headings and rules
//  5. table rows
//  6. embedded HTML tags and entities
//
// The stages are regular-expression rewrites. Unrecognized or malformed
// markup passes through unchanged; there is no failure mode.
//
// # Parallel Processing
//
// Convert and Converter are safe for concurrent use. The twiki2moin command
// converts a whole TWiki data tree with ResolveWorkers page workers.
package twiki2moin
