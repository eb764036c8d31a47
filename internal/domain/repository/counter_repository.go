package repository

// CounterRepository asigna consecutivos para números legibles
// (ORD-YYYY-NNNNN, INV-YYYY-NNNNN, EMP-NNNNN) con incremento atómico en la DB.
// Contar filas y formatear no es seguro con escritores concurrentes.
type CounterRepository interface {
	// Next incrementa y devuelve el valor del contador con nombre dado.
	Next(name string) (int64, error)
}
