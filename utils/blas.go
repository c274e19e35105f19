package utils

// BLASImplementation names the BLAS backing gonum, reported by the solver banner
var BLASImplementation = "gonum"
