package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Getting started with headerx",
		Content: topicQuickstart,
	},
	{
		Name:    "markers",
		Title:   "Marker Syntax",
		Summary: "//HEADERX and //ENDX lines and their grammar",
		Content: topicMarkers,
	},
	{
		Name:    "output",
		Title:   "Generated Headers",
		Summary: "Layout of extracted header files",
		Content: topicOutput,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: ".headerx.yaml fields and defaults",
		Content: topicConfig,
	},
	{
		Name:    "errors",
		Title:   "Errors and Exit Status",
		Summary: "What stops a run and what is only a warning",
		Content: topicErrors,
	},
}

const topicQuickstart = `Quick Start
===========

headerx extracts header files embedded in C sources. Keep a header next to
its implementation and let headerx write the .h file for you.

1. Scaffold a config and an example:

    headerx init

2. Preview what would be written:

    headerx -n example.c

3. Extract:

    headerx example.c

CLI Flags
---------

  headerx [options] <source_file>...   Extract headers, files in order
  -v, --verbose                        Trace every marker found
  -s, --strict                         Fail on a block left open at end of file
  -o, --output-dir DIR                 Resolve header names against DIR
      --no-line                        Do not emit #line directives
  -n, --dry-run                        Report headers without writing them
      --no-color                       Plain output
  -c, --config FILE                    Config file (default .headerx.yaml)
  -h, --help                           Show usage
  headerx init                         Write .headerx.yaml and example.c
  headerx docs [topic]                 Show documentation
`

const topicMarkers = `Marker Syntax
=============

A header block starts with a line

    //HEADERX(<header file name>,<header tag>)

and ends with a line starting with

    //ENDX

Both markers must start at column 1. Everything after //ENDX on its line is
ignored, as is everything after the closing ')' of //HEADERX.

Grammar
-------

    //HEADERX WS ( WS <file name> WS , WS <tag> WS )
    WS := zero or more spaces or tabs

  file name   letters, digits, '_', '.', '/'   (at least one)
  tag         letters, digits, '_'             (at least one)

Tokens are matched greedily. A name like "my-header.h" stops at '-', and
the line is rejected because ',' was expected there.

Lines outside blocks are ignored. Inside a block every line is copied as is,
including a nested //HEADERX line: blocks do not nest.
`

const topicOutput = `Generated Headers
=================

For the block

    //HEADERX(out.h,OUT_H)       <- line 1 of mix.c
    int x;
    //ENDX

headerx writes out.h:

    #ifndef OUT_H
    #define OUT_H
    #line 1 "mix.c"
    int x;
    #endif

The #line directive cites the marker line and the source name exactly as it
was given on the command line. Use --no-line to leave it out.

An existing header is replaced, never appended to, so running headerx twice
gives the same bytes. Headers are written to a temporary file first and
renamed into place when the block closes.

Directories in the header name must already exist.
`

const topicConfig = `Configuration Reference
=======================

headerx reads .headerx.yaml from the working directory, or the file given
with --config. All fields are optional. Flags given on the command line win.

  output-dir        string   Directory header names are resolved against.
  strict            bool     Fail on an unterminated block. Default false.
  line-directives   bool     Emit #line. Default true.
  verbose           bool     Trace markers. Default false.
  color             bool     Colored output. Default true.

Unknown fields are an error.
`

const topicErrors = `Errors and Exit Status
======================

headerx stops at the first failing file; later files are not processed.
The exit status is 1 when:

  - no source file was given
  - a source file cannot be opened
  - a //HEADERX line does not follow the grammar (see 'headerx docs markers')
  - a header file cannot be created or written
  - --strict is set and a block has no //ENDX

Without --strict, a block still open at end of file is written without
its #endif and a warning is printed. Headers finished before an error stay
on disk.
`
