package serializer

// SerializePrimitive renders a single scalar as "name=value".
//
// Absent values (nil, nil pointers) produce an empty string and no error;
// callers skip empty fragments. Arrays, objects and other composites are
// rejected with a *oaserrors.UnsupportedValueError. Only opts.AllowReserved
// is consulted.
func SerializePrimitive(name string, value any, opts Options) (string, error) {
	encoded, present, err := encodeScalar(name, value, opts.AllowReserved)
	if err != nil || !present {
		return "", err
	}
	return name + "=" + encoded, nil
}
