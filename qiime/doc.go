// Package qiime invokes the external QIIME command-line tools.
//
// QIIME itself is an opaque collaborator: this package only knows how to
// build the documented argument vectors for the tutorial steps and how to run
// them. Each step is a Command value (PickOpenReferenceOTUs,
// CoreDiversityAnalyses, SummarizeTable, ExcludeSeqsByBlast) whose Args
// method validates required fields and renders the flags. A Runner resolves
// the executable, runs it in the session directory and streams its output.
//
// Some QIIME scripts print Python warnings that the tutorial tells users to
// ignore; WarningFilter removes those lines from stderr and counts them.
// Every other failure is returned unchanged inside a *ToolError.
//
// The per-user .qiime_config file is read, never written, by ReadConfig.
package qiime
