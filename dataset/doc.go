// Package dataset downloads and unpacks the input data of the QIIME tutorial.
//
// A Catalog names every dataset the tutorial needs (reference OTUs, the
// tutorial reads and mapping file, parameter files) together with its URL and
// archive format. The built-in catalog is embedded from catalog.yaml and can
// be replaced by a user file with the same layout.
//
// Fetch takes one catalog entry and a session directory and performs the
// equivalent of
//
//	wget URL && tar -xzf ARCHIVE     (tar.gz, tgz)
//	wget URL && gunzip ARCHIVE       (gz)
//	wget URL && unzip ARCHIVE        (zip)
//
// in-process. Archive members that would land outside the destination
// directory are rejected. Failures are returned as they occur, wrapped with
// the offending path; nothing is retried.
package dataset
