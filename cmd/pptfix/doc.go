// Command pptfix re-encodes presentation video files into PowerPoint
// compatible MP4 containers. Running the bare command converts every media
// file in the input directory; subcommands cover environment checks and
// configuration management.
package main
