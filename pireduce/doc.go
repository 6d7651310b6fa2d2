// Package pireduce reduces a parasitics.Network driving-point view down to
// a three-element pi model (c2, rpi, c1) plus either an Elmore delay per
// load pin or a two-pole/two-residue response per load pin (spec §4.4).
//
// Both reductions share one first DFS pass computing O'Brien/Savarino
// admittance moments from the driver node outward; the pi model is read
// off those moments directly, and each per-load-pin result is produced by
// a second DFS that reuses the first pass's cached downstream capacitances
// (Elmore) or a moment-matching current/voltage sweep (pole/residue).
//
// Reference: Peter O'Brien and Thomas Savarino, "Modeling the
// Driving-Point Characteristic of Resistive Interconnect for Accurate
// Delay Estimation", DAC 1989; Curtis Ratzlaff and Lawrence Pillage,
// "RICE: Rapid Interconnect Circuit Evaluation Using AWE", IEEE TCAD 1994.
package pireduce
