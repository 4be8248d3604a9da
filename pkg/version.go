package moodflow

// Version is the current moodflow release.
const Version = "0.1.0"
