// Package main provides the qiimewb command-line interface.
//
// qiimewb guides a user through the QIIME microbiome amplicon tutorial on a
// shared server. Each run gets a private working directory named by random
// letters (temp/aZbQmNpLsTxY), tutorial datasets are downloaded and unpacked
// into it, and the external QIIME scripts are run there:
//   - session: allocate, list and show session directories
//   - fetch, datasets: download and unpack tutorial data
//   - otus, summarize, diversity, exclude: run one QIIME step
//   - tutorial: run the whole workflow
//   - inventory, qiime-config: inspect a session and the QIIME setup
package main
