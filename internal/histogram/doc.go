// Package histogram computes per-channel intensity histograms of a pixel grid.
//
// A Frequency table counts, for each of the channels R, G, B and GS
// (grayscale, the rounded mean of R, G and B), how many pixels sit at each of
// the 256 intensity levels. Normalize turns the counts into a Distribution
// whose channels each sum to 1.
//
// Tables are recomputed from the grid on every call; nothing is cached.
//
// RenderChart and RenderDistributionChart draw a table as a 2x2 bar chart
// PNG, encoded as base64 for transport.
package histogram
